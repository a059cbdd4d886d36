package models

const (
	TableUsers          = "accounts_user"
	TableRepositories   = "github_repositories"
	TableReleases       = "github_releases"
	TableRemoteAccounts = "oauthclient_remoteaccount"
	TableRemoteTokens   = "oauthclient_remotetoken"
)

// TableDependencies maps each table to the tables its foreign keys reference.
var TableDependencies = map[string][]string{
	TableUsers:          nil,
	TableRepositories:   {TableUsers},
	TableReleases:       {TableRepositories},
	TableRemoteAccounts: {TableUsers},
	TableRemoteTokens:   {TableRemoteAccounts},
}

// Tables lists all tables in a stable order.
var Tables = []string{
	TableUsers,
	TableRepositories,
	TableReleases,
	TableRemoteAccounts,
	TableRemoteTokens,
}
