package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spectralab/spectral-tools-mcp/internal/server"
)

// Set via -ldflags at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("spectral-tools-mcp %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	// Stdout belongs to the protocol; all logging goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("SPECTRAL_MCP_LOG_LEVEL") == "debug" {
		log.Printf("spectral-tools-mcp %s starting (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := server.New().Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printUsage() {
	fmt.Println("spectral-tools-mcp - MCP server for spectral image analysis")
	fmt.Println()
	fmt.Println("Usage: spectral-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SPECTRAL_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("The server speaks the MCP protocol over stdin/stdout; point your")
	fmt.Println("MCP client at the binary directly.")
}
