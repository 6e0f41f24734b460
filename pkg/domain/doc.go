// Package domain contains the core domain entities of the posture scanning
// engine: scans, findings, companies, subscriptions and plan limits. These
// types represent business concepts and are intentionally free of
// infrastructure concerns so they can be shared across packages.
package domain
