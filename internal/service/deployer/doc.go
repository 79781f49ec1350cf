// Package deployer sequences the deployment workflow: package the docs tree,
// upload the archive to the publishing portal, poll processing status until a
// terminal state, and clean up the transient archive.
//
// Cleanup is guaranteed on all exit paths, including interruption; a marker
// file prevents concurrent deployments and stale markers are reclaimed.
package deployer
