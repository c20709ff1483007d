package credentials

import (
	"net/url"
	"strings"
)

// Default URL settings of the festival's host tooling.
const (
	DefaultHelperBaseURL = "https://hosts.oneearthfilmfest.org/"
	DefaultFormBaseURL   = "https://docs.google.com/forms/d/e/YOUR_FORM_ID/viewform"
	DefaultVenueParam    = "entry.VENUE_FIELD_ID"
	DefaultEmailParam    = "entry.EMAIL_FIELD_ID"
)

// HelperURL is the per-venue helper page address.
func HelperURL(base, token string) string {
	return base + token + "/"
}

// UpdateFormURL is a pre-filled form link carrying the venue name and
// contact email.
func UpdateFormURL(formBase, venueParam, emailParam, name, email string) string {
	return formBase + "?" + venueParam + "=" + encodeComponent(name) +
		"&" + emailParam + "=" + encodeComponent(email)
}

// componentUnescape restores the characters a browser's encodeURIComponent
// leaves untouched but url.QueryEscape encodes.
var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}
