// Package mocks provides test doubles for the store interfaces.
package mocks
