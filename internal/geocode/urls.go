package geocode

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	searchEndpoint    = "https://www.google.com/maps/search/?api=1"
	staticMapEndpoint = "https://maps.googleapis.com/maps/api/staticmap"
)

// encodeLocation percent-encodes a location for use in a URL query, with
// spaces spelled %20 rather than +.
func encodeLocation(location string) string {
	return strings.ReplaceAll(url.QueryEscape(norm.NFC.String(location)), "+", "%20")
}

// SearchURL returns a Google Maps search link for the location.
func SearchURL(location string) string {
	return searchEndpoint + "&query=" + encodeLocation(location)
}

// StaticMapURL returns a Static Maps image URL showing a red marker on the
// location.
func (c *Client) StaticMapURL(location string) string {
	encoded := encodeLocation(location)
	return fmt.Sprintf("%s?center=%s&zoom=15&size=600x300&markers=color:red|%s&key=%s",
		staticMapEndpoint, encoded, encoded, c.apiKey)
}
