// Package config loads expectation fixtures from YAML or JSON files.
//
// A fixture file declares expectations in registration order:
//
//	version: "1"
//	expectations:
//	  - name: create user
//	    url: https://api.example.com/users
//	    method: POST
//	    headers:
//	      mode: exact
//	      values:
//	        Authorization: Bearer ${API_TOKEN:-test}
//	    body:
//	      mode: exact
//	      value: {"name": "alice"}
//	    response:
//	      status: 201
//	      headers:
//	        Location: /users/1
//	      body: {"id": 1}
//
// Predicates are selected with an explicit mode. Header modes are any,
// exact and none; body modes are ignore, any, exact, none and jsonpath.
// Omitting headers means any, omitting body means ignore and omitting
// method means GET. An explicit "value: null" is a present null body, while
// a missing value key is an error for exact mode.
//
// Files are validated against a JSON schema before decoding. Environment
// references of the form ${VAR} and ${VAR:-default} are expanded first.
// Load accepts paths and doublestar globs and returns expectations in the
// order the files were given, sorted within each glob.
package config
