// Package fluidtopics implements the client side of the portal's document
// upload API: a single-attempt multipart upload with a typed outcome, and a
// fixed-interval, bounded-attempt poller for asynchronous processing status.
//
// Both calls use HTTP Basic auth and expect JSON response bodies with at
// least a "status" field; the upload response additionally carries an
// "upload_id" used for polling.
package fluidtopics
