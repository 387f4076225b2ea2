// CLI entry point for corpus ingestion and local issue analysis.
package main

import "github.com/lexatlas/precedent-intelligence/internal/interfaces/cli"

func main() {
	cli.Execute()
}
