package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wilsonA2000/verihome/internal/app"
	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// AuditCommandHandler encapsulates logic for audit log maintenance via CLI.
type AuditCommandHandler struct {
	logger logger.Logger
}

// NewAuditCommandHandler initializes and returns an AuditCommandHandler
// instance with a configured logger.
func NewAuditCommandHandler() (*AuditCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &AuditCommandHandler{
		logger: loggerInstance,
	}, nil
}

// ExportAuditCmd writes matching audit entries to a file as CSV or JSON
func (commandHandler *AuditCommandHandler) ExportAuditCmd(cmd *cobra.Command, _ []string) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		commandHandler.logger.Error("invalid format flag ", err)
		return
	}
	if format != "csv" && format != "json" {
		commandHandler.logger.Error("format must be csv or json, got ", format)
		return
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		commandHandler.logger.Error("invalid output flag ", err)
		return
	}

	query, ok := commandHandler.buildQuery(cmd)
	if !ok {
		return
	}

	auditService, db, ok := commandHandler.openAuditService(cmd)
	if !ok {
		return
	}
	defer closeDatabase(db, commandHandler.logger)

	// Exports default to chronological order so the files read naturally
	query.SortOrder = "asc"

	var w io.Writer = os.Stdout
	if output != "" {
		file, err := os.Create(filepath.Clean(output))
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
		defer func() {
			if err := file.Close(); err != nil {
				commandHandler.logger.Warn("Failed to close output file: ", err)
			}
		}()
		w = file
	}

	ctx := cmd.Context()

	var rows int
	switch format {
	case "csv":
		rows, err = auditService.Export(ctx, query, w)
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
	case "json":
		entries, err := auditService.List(ctx, query)
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			commandHandler.logger.Error(err)
			return
		}
		rows = len(entries)
	}

	if output != "" {
		commandHandler.logger.Info("Exported ", rows, " audit entries to ", output)
	}
}

// PurgeAuditCmd deletes audit entries older than the retention window
func (commandHandler *AuditCommandHandler) PurgeAuditCmd(cmd *cobra.Command, _ []string) {
	days, err := cmd.Flags().GetInt("older-than-days")
	if err != nil {
		commandHandler.logger.Error("invalid older-than-days flag ", err)
		return
	}
	if days < 1 {
		commandHandler.logger.Error("older-than-days must be at least 1, got ", days)
		return
	}

	auditService, db, ok := commandHandler.openAuditService(cmd)
	if !ok {
		return
	}
	defer closeDatabase(db, commandHandler.logger)

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	deleted, err := auditService.Purge(cmd.Context(), cutoff)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Purged ", deleted, " audit entries older than ", days, " days")
}

// buildQuery assembles the entry query from the shared filter flags
func (commandHandler *AuditCommandHandler) buildQuery(cmd *cobra.Command) (*activity.EntryQuery, bool) {
	query := activity.NewEntryQuery()

	if userID, err := cmd.Flags().GetString("user-id"); err == nil && userID != "" {
		query.UserID = userID
	}
	if action, err := cmd.Flags().GetString("action"); err == nil && action != "" {
		query.Action = action
	}
	if targetID, err := cmd.Flags().GetString("target-id"); err == nil && targetID != "" {
		query.TargetID = targetID
	}
	if limit, err := cmd.Flags().GetInt("limit"); err == nil && limit > 0 {
		query.Limit = limit
	}

	if raw, err := cmd.Flags().GetString("from"); err == nil && raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			commandHandler.logger.Error("invalid from timestamp, use RFC3339: ", err)
			return nil, false
		}
		query.From = &from
	}
	if raw, err := cmd.Flags().GetString("to"); err == nil && raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			commandHandler.logger.Error("invalid to timestamp, use RFC3339: ", err)
			return nil, false
		}
		query.To = &to
	}

	if err := query.Validate(); err != nil {
		commandHandler.logger.Error(err)
		return nil, false
	}
	return query, true
}

// openAuditService wires the audit service over a fresh database connection.
// The caller owns the returned connection.
func (commandHandler *AuditCommandHandler) openAuditService(_ *cobra.Command) (activity.AuditService, *gorm.DB, bool) {
	cfg, err := loadConfig()
	if err != nil {
		commandHandler.logger.Error(err)
		return nil, nil, false
	}

	db, err := openDatabase(cfg)
	if err != nil {
		commandHandler.logger.Error(err)
		return nil, nil, false
	}

	activityRepo, err := persistence.NewGormActivityRepository(db, commandHandler.logger)
	if err != nil {
		closeDatabase(db, commandHandler.logger)
		commandHandler.logger.Error(err)
		return nil, nil, false
	}

	// The async worker only backs Record, which the CLI never calls
	auditService, _, err := app.NewAuditService(activityRepo, commandHandler.logger)
	if err != nil {
		closeDatabase(db, commandHandler.logger)
		commandHandler.logger.Error(err)
		return nil, nil, false
	}

	return auditService, db, true
}

// InitAuditCommands registers audit log maintenance commands
func InitAuditCommands(rootCmd *cobra.Command) error {
	handler, err := NewAuditCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create audit command handler %w", err)
	}

	var auditCmd = &cobra.Command{
		Use:   "audit",
		Short: "Audit log maintenance",
	}

	var exportAuditCmd = &cobra.Command{
		Use:   "export",
		Short: "Export audit entries as CSV or JSON",
		Run:   handler.ExportAuditCmd,
	}
	exportAuditCmd.Flags().StringP("from", "", "", "Only include entries at or after this RFC3339 timestamp")
	exportAuditCmd.Flags().StringP("to", "", "", "Only include entries before this RFC3339 timestamp")
	exportAuditCmd.Flags().StringP("user-id", "", "", "Only include entries recorded for this user id")
	exportAuditCmd.Flags().StringP("action", "", "", "Only include entries whose action starts with this prefix")
	exportAuditCmd.Flags().StringP("target-id", "", "", "Only include entries touching this object id")
	exportAuditCmd.Flags().StringP("format", "", "csv", "Export format, csv or json")
	exportAuditCmd.Flags().StringP("output", "", "", "Output file path, stdout when omitted")
	exportAuditCmd.Flags().IntP("limit", "", 500, "Maximum number of entries to export")
	auditCmd.AddCommand(exportAuditCmd)

	var purgeAuditCmd = &cobra.Command{
		Use:   "purge",
		Short: "Delete audit entries past the retention window",
		Run:   handler.PurgeAuditCmd,
	}
	purgeAuditCmd.Flags().IntP("older-than-days", "", 180, "Delete entries older than this many days")
	auditCmd.AddCommand(purgeAuditCmd)

	rootCmd.AddCommand(auditCmd)

	return nil
}
