// Package memory implements the record-store ports in process memory.
// It backs STORE_DRIVER=memory for local runs and is what the HTTP and
// service tests exercise.
package memory
