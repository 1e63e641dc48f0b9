// Package design defines the experiment model shared by every stage of the
// pipeline: the parsed Definition (ordered factors plus an optional array
// request), the Run records produced by the generator, and the typed errors
// each stage reports. Values in this package never alias one another; runs
// copy factor names and level labels so they stay valid once the Definition
// is discarded.
package design
