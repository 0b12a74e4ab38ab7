// Package analytics derives trade metrics from raw journal records.
//
// Every function is pure: records are read, never modified, and nothing is
// cached. Invalid numeric input never produces an error. It produces an
// absent value instead, and absent values are excluded from every
// aggregate rather than counted as zero.
package analytics
