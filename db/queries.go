package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

//go:embed sql/select_migration_versions.sql
var SelectMigrationVersionsSQL string

// Bookmark queries

//go:embed sql/insert_bookmark.sql
var InsertBookmarkSQL string

//go:embed sql/select_bookmarks_by_video.sql
var SelectBookmarksByVideoSQL string

//go:embed sql/delete_bookmark.sql
var DeleteBookmarkSQL string

// Export history queries

//go:embed sql/insert_export.sql
var InsertExportSQL string

//go:embed sql/select_recent_exports.sql
var SelectRecentExportsSQL string
