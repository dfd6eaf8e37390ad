package snapshot

// Schema DDL for the SQLite snapshot.
const (
	createMeta = `CREATE TABLE IF NOT EXISTS snapshot_meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

	createContacts = `CREATE TABLE IF NOT EXISTS contacts (
    position INTEGER NOT NULL,
    name TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    birthday TEXT NOT NULL,
    address TEXT NOT NULL
);`

	createContactPhones = `CREATE TABLE IF NOT EXISTS contact_phones (
    name TEXT NOT NULL,
    position INTEGER NOT NULL,
    phone TEXT NOT NULL,
    PRIMARY KEY (name, position),
    FOREIGN KEY (name) REFERENCES contacts(name) ON DELETE CASCADE
);`
)

// Metadata keys stored in snapshot_meta.
const (
	metaSchema  = "schema"
	metaVersion = "version"
	metaSaveID  = "save_id"
	metaSavedAt = "saved_at"
	metaCount   = "count"
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createMeta,
	createContacts,
	createContactPhones,
}
