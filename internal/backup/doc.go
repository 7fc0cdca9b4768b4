// Package backup keeps timestamped copies of globcheck's config file before
// commands overwrite it.
//
// Snapshots live flat in one directory, named after the file they copy:
//
//	~/.config/globcheck/backups/
//	├── config.yaml.20260123T100712.123.bak
//	└── config.yaml.20260124T081500.004.bak
//
// # Creating Backups
//
//	mgr := backup.NewManager(filepath.Join(config.Dir(), "backups"))
//	snap, err := mgr.Backup(path)
//
// A backup whose content matches the newest snapshot is not stored twice;
// Backup returns the existing snapshot instead. Old snapshots beyond the
// retention count (see [WithRetentionCount]) are pruned after every backup.
//
// # Listing
//
// [Manager.List] returns the snapshots of a file, newest first, or an error
// marked [ErrNoBackupsFound].
package backup
