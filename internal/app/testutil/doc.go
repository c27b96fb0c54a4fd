// Package testutil provides shared test helpers for scribe.
//
// It contains three groups of helpers:
//
// Database helpers (db_helpers.go) create a throwaway SQLite history store and seed it.
//
// Mocks cover the provider, repository, archive and service interfaces.
// MockTranscriptionDAO keeps its rows in memory so tests can assert on what was recorded.
//
// Fixtures (fixtures.go) hold sample history rows and fake media files.
//
//	func TestList(t *testing.T) {
//	    dao := testutil.SetupTestSQLite(t)
//	    testutil.SeedTranscriptions(t, dao, testutil.Fixtures())
//	    // ...
//	}
package testutil
