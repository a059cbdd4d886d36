package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS accounts_user (
	id INTEGER PRIMARY KEY,
	username VARCHAR(255) UNIQUE,
	displayname VARCHAR(255),
	email VARCHAR(255) UNIQUE,
	domain VARCHAR(255),
	password VARCHAR(255),
	active BOOLEAN,
	confirmed_at DATETIME,
	version_id INTEGER NOT NULL,
	profile TEXT,
	preferences TEXT,
	blocked_at DATETIME,
	verified_at DATETIME,
	created DATETIME NOT NULL,
	updated DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS github_repositories (
	id CHAR(36) PRIMARY KEY,
	github_id INTEGER UNIQUE,
	name VARCHAR(255) NOT NULL UNIQUE,
	user_id INTEGER REFERENCES accounts_user (id),
	hook INTEGER,
	created DATETIME NOT NULL,
	updated DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS github_releases (
	id CHAR(36) PRIMARY KEY,
	release_id INTEGER UNIQUE,
	tag VARCHAR(255),
	errors TEXT,
	repository_id CHAR(36) NOT NULL REFERENCES github_repositories (id),
	record_id CHAR(36),
	status CHAR(1) NOT NULL,
	created DATETIME NOT NULL,
	updated DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_github_releases_record_id ON github_releases (record_id);

CREATE TABLE IF NOT EXISTS oauthclient_remoteaccount (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES accounts_user (id),
	client_id VARCHAR(255) NOT NULL,
	extra_data TEXT NOT NULL,
	created DATETIME NOT NULL,
	updated DATETIME NOT NULL,
	UNIQUE (user_id, client_id)
);

CREATE TABLE IF NOT EXISTS oauthclient_remotetoken (
	id_remote_account INTEGER NOT NULL REFERENCES oauthclient_remoteaccount (id) ON DELETE CASCADE,
	token_type VARCHAR(40) NOT NULL DEFAULT '',
	access_token TEXT NOT NULL,
	secret TEXT NOT NULL DEFAULT '',
	created DATETIME NOT NULL,
	updated DATETIME NOT NULL,
	PRIMARY KEY (id_remote_account, token_type)
);
`
