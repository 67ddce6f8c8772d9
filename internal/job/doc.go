// Package job manages background job submission and processing.
// Work that must not block an HTTP request, such as sending the welcome
// email after registration, is wrapped in a Job and handed to a Submitter.
// The Runner executes jobs in-process; the redisqueue package provides a
// Submitter and Consumer that move jobs through Redis instead.
package job
