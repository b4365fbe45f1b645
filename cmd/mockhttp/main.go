// mockhttp CLI - validate, dry-run and serve HTTP expectation fixtures
package main

import "github.com/getmockd/mockhttp/pkg/cli"

func main() {
	cli.Execute()
}
