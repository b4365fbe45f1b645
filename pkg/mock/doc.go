// Package mock defines the data model shared by the matching engine, the
// session and the interception adapters.
//
// The central types are:
//
//   - Request: the normalized form of an intercepted outbound HTTP call
//   - Expectation: a registered rule pairing a request pattern with a
//     ResponseTemplate
//   - HeaderPredicate / BodyPredicate: tagged variants describing how the
//     request headers and body must look (exact, any, none, ...)
//   - Response: the concrete value handed back to an adapter after a match
//
// Predicates are explicit variants rather than sentinel values, so a body of
// "any" or "none" sent by a client is ordinary data and never collides with a
// matching mode:
//
//	exp := mock.Expectation{
//	    URL:     "https://api.example.com/users",
//	    Method:  "POST",
//	    Headers: mock.ExactHeaders(map[string]string{"Authorization": "Bearer t"}),
//	    Body:    mock.ExactBody(map[string]any{"name": "Bob"}),
//	    Response: mock.ResponseTemplate{
//	        StatusCode: 201,
//	        Body:       mock.BodyOf(map[string]any{"id": 7}),
//	    },
//	}
//
// Render turns a ResponseTemplate into a Response. An absent template body
// renders as the empty string, never as nil.
package mock
