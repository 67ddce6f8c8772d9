// Package redisqueue carries background jobs through a Redis list. The API
// process pushes serialized job.Envelope values with LPUSH; the worker
// process pops them with BRPOP, rebuilds each job through a job.Registry and
// executes it. Failed jobs are pushed back with an incremented attempt
// counter until the attempt limit, then moved to a dead-letter list.
package redisqueue
