// Package tlsroots builds TLS client settings from the system roots plus
// optional PEM files.
package tlsroots
