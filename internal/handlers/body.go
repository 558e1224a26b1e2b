package handlers

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes a JSON request body into out. Unknown fields are
// rejected so a typo or an out-of-scope field never reaches business
// logic.
func parseBody(c *fiber.Ctx, out any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}
