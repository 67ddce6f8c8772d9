// Package domain holds the User and Task entities, their validation rules and
// the error categories the other layers wrap.
package domain
