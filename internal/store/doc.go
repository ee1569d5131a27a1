// Package store provides storage and pub/sub functionality for live-update
// snapshots.
//
// This package is internal to the admin client and manages the in-memory
// record of the most recent live-updates fetch. It implements a
// publish-subscribe pattern so watchers (such as the CLI watch command) can
// react to new snapshots as they arrive.
//
// The main components are:
//
//   - [Store]: Interface defining storage and subscription operations
//   - [MemoryStore]: In-memory implementation of Store with pub/sub
//   - [Snapshot]: Storage representation of one live-updates fetch
//
// The store is designed for concurrent access with proper synchronization.
// Subscribers receive updates via channels with non-blocking sends (slow
// subscribers will miss updates rather than block the system).
//
// Users of the adminclient library should not need to interact with this
// package directly.
package store
