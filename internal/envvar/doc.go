// Package envvar reads and writes Windows environment variables in the
// process, user and machine scopes, presenting delimited values such as Path
// as lists.
//
// The stored value is always a single string. Reader splits it on the
// delimiter in effect, and Setter joins, normalizes and writes it back.
package envvar
