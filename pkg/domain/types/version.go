package types

// Version is the application version
const Version = "1.0.0"
