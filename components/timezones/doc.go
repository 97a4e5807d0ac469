// Package timezones provides deterministic IANA timezone data and search
// helpers for building timezone select widgets.
//
// The backing data is loaded from the embedded IANA timezone list under
// data/iana_timezones.txt. Cell wraps the list into a SelectListInput cell
// so a grid can offer a timezone picker without shipping its own data.
package timezones
