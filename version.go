package markov

// Version is the library version, overridden at link time for releases.
var Version = "0.1.0"
