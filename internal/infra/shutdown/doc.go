// Package shutdown releases process resources in reverse order of
// acquisition, once, within a deadline.
package shutdown
