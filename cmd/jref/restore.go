package main

import (
	"time"

	"github.com/spf13/cobra"

	"jref/internal/backup"
	jreferrors "jref/internal/errors"
)

var (
	restorePlan string
	restoreList bool
)

// BackupCLI summarizes one snapshot for listing.
type BackupCLI struct {
	Id        string    `json:"id"`
	Operation string    `json:"operation"`
	CreatedAt time.Time `json:"createdAt"`
	Files     int       `json:"files"`
	SizeBytes int64     `json:"sizeBytes"`
}

// BackupListCLI is the restore --list payload.
type BackupListCLI struct {
	Backups []BackupCLI `json:"backups"`
}

// RestoreResultCLI is the restore --plan payload.
type RestoreResultCLI struct {
	Id       string   `json:"id"`
	Restored []string `json:"restored"`
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore files from a pre-rename backup",
	Long: `Restore the files captured before a rename, verifying every
archived file against its checksum before anything is written back.

Examples:
  jref restore --list
  jref restore --plan 2f1c9a4e-ab21-4f5e-9c1e-8d3b2a7f6e10`,
	Run: runRestore,
}

func init() {
	restoreCmd.Flags().StringVar(&restorePlan, "plan", "", "Backup ID to restore")
	restoreCmd.Flags().BoolVar(&restoreList, "list", false, "List available backups, newest first")
	rootCmd.AddCommand(restoreCmd)
}

func toBackupCLI(m *backup.Manifest) BackupCLI {
	var size int64
	for _, e := range m.Files {
		size += e.Size
	}
	return BackupCLI{
		Id:        m.ID,
		Operation: m.Operation,
		CreatedAt: m.CreatedAt,
		Files:     len(m.Files),
		SizeBytes: size,
	}
}

func runRestore(cmd *cobra.Command, args []string) {
	s := mustSession(true)
	store := backup.NewStore(s.root, s.cfg, s.log)

	switch {
	case restoreList:
		manifests, err := store.List()
		list := &BackupListCLI{}
		for _, m := range manifests {
			list.Backups = append(list.Backups, toBackupCLI(m))
		}
		emit(s, "restore", list, err)
	case restorePlan != "":
		files, err := store.Restore(restorePlan)
		emit(s, "restore", &RestoreResultCLI{Id: restorePlan, Restored: files}, err)
	default:
		emit(s, "restore", nil, jreferrors.New(jreferrors.InvalidArgument,
			"pass --plan ID to restore or --list to enumerate backups"))
	}
}
