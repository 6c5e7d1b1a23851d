// Command htaccess writes SPA rewrite rules into a frontend build directory.
//
//	htaccess [-dist dist] [subdirectory]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	run(os.Args[1:], os.Stdout)
}

// run never fails the process: a missing build directory is reported as a warning.
func run(args []string, out io.Writer) {
	fs := flag.NewFlagSet("htaccess", flag.ContinueOnError)
	fs.SetOutput(out)
	dist := fs.String("dist", "dist", "frontend build output directory")
	if err := fs.Parse(args); err != nil {
		return
	}
	subdir := fs.Arg(0)

	path, err := Write(*dist, subdir)
	switch {
	case errors.Is(err, ErrDistNotFound):
		fmt.Fprintf(out, "❌ %s folder not found. Build the frontend first.\n", *dist)
		return
	case err != nil:
		fmt.Fprintf(out, "❌ %v\n", err)
		return
	}

	fmt.Fprintf(out, "✅ .htaccess file created successfully at %s\n", path)
	if base := basePath(subdir); base != "" {
		fmt.Fprintf(out, "📁 Configured for subdirectory: %s\n", base)
	} else {
		fmt.Fprintln(out, "🌐 Configured for root domain deployment")
	}
}
