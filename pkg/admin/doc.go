// Package admin provides a REST API for inspecting and changing a session
// while it serves mocked traffic.
//
// Endpoints, relative to the mount prefix (the CLI uses /__mockhttp):
//
//	GET    /health                     - Health check
//	GET    /expectations               - List expectations in registration order
//	POST   /expectations               - Register fixtures (YAML or JSON fixture document)
//	DELETE /expectations               - Reset the session
//	GET    /expectations/{id}          - Get one expectation
//	GET    /expectations/{id}/verify   - Call count for one expectation
//	GET    /requests                   - List recorded requests, newest first
//	GET    /requests/{id}              - Get one recorded request
//	DELETE /requests                   - Clear recorded requests
//
// GET /requests accepts the query parameters method, url, matched
// (true/false), expectation, limit and offset.
//
// Example:
//
//	curl -X POST http://localhost:8080/__mockhttp/expectations \
//	  -H "Content-Type: application/yaml" \
//	  --data-binary @fixtures.yaml
package admin
