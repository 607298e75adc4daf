package internal

// Version is the sentencebank release version.
var Version = "0.3.1"
