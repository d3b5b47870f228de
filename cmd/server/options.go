package main

// Options are the command line flags of the edge server.
type Options struct {
	EnvFile string `short:"e" long:"env-file" description:"dotenv file loaded before the environment is read" default:".env"`
	Port    string `short:"p" long:"port" description:"listen port, overrides PORT"`
}
