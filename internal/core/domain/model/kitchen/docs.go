// Package kitchen describes preparation resources: typed stations that take
// sub-orders, can be switched off, and count how many sub-orders they are
// currently working on.
package kitchen
