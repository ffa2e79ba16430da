package beanstalk

// Version is the library version.
const Version = "0.2.0"
