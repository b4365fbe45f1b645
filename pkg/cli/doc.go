// Package cli implements the mockhttp command line.
//
// Commands:
//
//	validate   check fixture files
//	match      dry-run one request against fixtures
//	serve      serve fixtures over HTTP with an admin API
//	version    print build information
//
// Fixture sources come from positional arguments (validate only), the
// repeatable --fixtures flag, or the MOCKHTTP_FIXTURES environment variable,
// in that order of precedence.
//
// serve --tail prints one line per dispatched request; --log-file adds a
// debug-level JSON log alongside the console log.
package cli
