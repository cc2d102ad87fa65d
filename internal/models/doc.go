// Package models defines the core domain models for the places backend.
//
// # Models
//
//   - User: a registered account, identified by UUID
//   - Place: a shared place created by a user
//   - BucketListEntry: one place tracked in one user's bucket list
//
// # Design Principles
//
//  1. **No cross-aggregate pointers**: relationships use ID strings, never
//     pointers. A BucketListEntry holds a place ID, not a *Place; the place
//     is resolved at read/validation time.
//  2. **Denormalized display data**: an entry captures the place creator's
//     name at add time and does not track later renames.
//  3. **Per-user ownership**: each user's bucket list is an independent
//     ordered collection; two users bookmarking the same place hold two
//     unrelated entries.
package models
