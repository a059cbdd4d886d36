package mysql

const schemaSQL = `
CREATE TABLE IF NOT EXISTS accounts_user (
	id INT NOT NULL PRIMARY KEY,
	username VARCHAR(255) NULL UNIQUE,
	displayname VARCHAR(255) NULL,
	email VARCHAR(255) NULL UNIQUE,
	domain VARCHAR(255) NULL,
	password VARCHAR(255) NULL,
	active BOOLEAN NULL,
	confirmed_at DATETIME(6) NULL,
	version_id INT NOT NULL,
	profile JSON NULL,
	preferences JSON NULL,
	blocked_at DATETIME(6) NULL,
	verified_at DATETIME(6) NULL,
	created DATETIME(6) NOT NULL,
	updated DATETIME(6) NOT NULL
) ENGINE=InnoDB;

CREATE TABLE IF NOT EXISTS github_repositories (
	id CHAR(36) NOT NULL PRIMARY KEY,
	github_id INT NULL UNIQUE,
	name VARCHAR(255) NOT NULL UNIQUE,
	user_id INT NULL,
	hook INT NULL,
	created DATETIME(6) NOT NULL,
	updated DATETIME(6) NOT NULL,
	CONSTRAINT fk_github_repositories_user_id FOREIGN KEY (user_id) REFERENCES accounts_user (id)
) ENGINE=InnoDB;

CREATE TABLE IF NOT EXISTS github_releases (
	id CHAR(36) NOT NULL PRIMARY KEY,
	release_id INT NULL UNIQUE,
	tag VARCHAR(255) NULL,
	errors JSON NULL,
	repository_id CHAR(36) NOT NULL,
	record_id CHAR(36) NULL,
	status CHAR(1) NOT NULL,
	created DATETIME(6) NOT NULL,
	updated DATETIME(6) NOT NULL,
	INDEX ix_github_releases_record_id (record_id),
	CONSTRAINT fk_github_releases_repository_id FOREIGN KEY (repository_id) REFERENCES github_repositories (id)
) ENGINE=InnoDB;

CREATE TABLE IF NOT EXISTS oauthclient_remoteaccount (
	id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	user_id INT NOT NULL,
	client_id VARCHAR(255) NOT NULL,
	extra_data JSON NOT NULL,
	created DATETIME(6) NOT NULL,
	updated DATETIME(6) NOT NULL,
	CONSTRAINT uq_oauthclient_remoteaccount_user_id UNIQUE (user_id, client_id),
	CONSTRAINT fk_oauthclient_remoteaccount_user_id FOREIGN KEY (user_id) REFERENCES accounts_user (id)
) ENGINE=InnoDB;

CREATE TABLE IF NOT EXISTS oauthclient_remotetoken (
	id_remote_account INT NOT NULL,
	token_type VARCHAR(40) NOT NULL DEFAULT '',
	access_token TEXT NOT NULL,
	secret TEXT NOT NULL,
	created DATETIME(6) NOT NULL,
	updated DATETIME(6) NOT NULL,
	PRIMARY KEY (id_remote_account, token_type),
	CONSTRAINT fk_oauthclient_remote_token_remote_account
		FOREIGN KEY (id_remote_account) REFERENCES oauthclient_remoteaccount (id) ON DELETE CASCADE
) ENGINE=InnoDB;
`
