package postgres

const schemaSQL = `
CREATE TABLE IF NOT EXISTS accounts_user (
	id INTEGER PRIMARY KEY,
	username VARCHAR(255) UNIQUE,
	displayname VARCHAR(255),
	email VARCHAR(255) UNIQUE,
	domain VARCHAR(255),
	password VARCHAR(255),
	active BOOLEAN,
	confirmed_at TIMESTAMP,
	version_id INTEGER NOT NULL,
	profile JSONB,
	preferences JSONB,
	blocked_at TIMESTAMP,
	verified_at TIMESTAMP,
	created TIMESTAMP NOT NULL,
	updated TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS github_repositories (
	id UUID PRIMARY KEY,
	github_id INTEGER UNIQUE,
	name VARCHAR(255) NOT NULL UNIQUE,
	user_id INTEGER REFERENCES accounts_user (id),
	hook INTEGER,
	created TIMESTAMP NOT NULL,
	updated TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS github_releases (
	id UUID PRIMARY KEY,
	release_id INTEGER UNIQUE,
	tag VARCHAR(255),
	errors JSON,
	repository_id UUID NOT NULL REFERENCES github_repositories (id),
	record_id UUID,
	status CHAR(1) NOT NULL,
	created TIMESTAMP NOT NULL,
	updated TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS ix_github_releases_record_id ON github_releases (record_id);

CREATE TABLE IF NOT EXISTS oauthclient_remoteaccount (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES accounts_user (id),
	client_id VARCHAR(255) NOT NULL,
	extra_data JSON NOT NULL,
	created TIMESTAMP NOT NULL,
	updated TIMESTAMP NOT NULL,
	CONSTRAINT uq_oauthclient_remoteaccount_user_id UNIQUE (user_id, client_id)
);

CREATE TABLE IF NOT EXISTS oauthclient_remotetoken (
	id_remote_account INTEGER NOT NULL,
	token_type VARCHAR(40) NOT NULL DEFAULT '',
	access_token TEXT NOT NULL,
	secret TEXT NOT NULL DEFAULT '',
	created TIMESTAMP NOT NULL,
	updated TIMESTAMP NOT NULL,
	PRIMARY KEY (id_remote_account, token_type),
	CONSTRAINT fk_oauthclient_remote_token_remote_account
		FOREIGN KEY (id_remote_account) REFERENCES oauthclient_remoteaccount (id) ON DELETE CASCADE
);
`
