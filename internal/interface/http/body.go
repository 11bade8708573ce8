package handlers

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
)

// requestBody extracts the loosely-typed payload the validation pipeline
// consumes. Multipart fields arrive as strings; a JSON body is decoded as
// a generic object. A missing body yields nil, which the pipeline turns
// into its no-data failure. A multipart form with no fields still counts
// as an (empty) object.
func requestBody(c *gin.Context) (map[string]any, error) {
	if c.ContentType() == "multipart/form-data" {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		body := make(map[string]any, len(form.Value))
		for k, vs := range form.Value {
			if len(vs) > 0 {
				body[k] = vs[0]
			}
		}
		return body, nil
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return body, nil
}
