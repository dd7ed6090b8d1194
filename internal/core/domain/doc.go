// Package domain contains the core business entities and rules for Shoptalk.
// It has no dependencies on adapters or external libraries; everything here
// is plain Go types shared by services and ports.
package domain
