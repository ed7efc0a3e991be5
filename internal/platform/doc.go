// Package platform provides cross-platform filesystem operations.
// Deleted trees are moved to the user's trash on macOS and Linux;
// platforms without a known trash location report an error so callers
// can fall back to permanent removal.
package platform
