package mock

import "maps"

// Render projects a template into a concrete Response. It never fails.
//
// The status code is copied verbatim (zero becomes DefaultStatusCode), the
// headers are copied, and the body is returned as-is when present or as ""
// when the template has none.
func Render(t ResponseTemplate) Response {
	status := t.StatusCode
	if status == 0 {
		status = DefaultStatusCode
	}

	headers := make(map[string]string, len(t.Headers))
	maps.Copy(headers, t.Headers)

	var body any = ""
	if t.Body.Present() {
		body = CloneValue(t.Body.Value())
	}

	return Response{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}
}
