// Package ui provides the centre-text sinks the battle manager writes to and
// the localized strings it shows.
package ui
