package file_cmd

import (
	"context"
	"errors"
	"fmt"
	"hourbox/app"
	"hourbox/archive"
	"hourbox/cmd/cmd_env"
	"hourbox/file_io"
	"hourbox/files"
	L "hourbox/logger"
	"hourbox/preview"
	"hourbox/upload"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

// withApp opens the app for the duration of run.
func withApp(env *cmd_env.Env, run func(ctx context.Context, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := env.OpenApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)
		return run(ctx, a, args)
	}
}

func FileCommand(env *cmd_env.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Upload, list, download, preview and move files",
		Long:  fileUsageStr,
	}
	cmd.AddCommand(
		uploadCommand(env),
		lsCommand(env),
		getCommand(env),
		rmCommand(env),
		mvCommand(env),
		previewCommand(env),
		usageCommand(env),
		archiveCommand(env),
	)
	return cmd
}

func uploadCommand(env *cmd_env.Env) *cobra.Command {
	var folderRef string
	cmd := &cobra.Command{
		Use:   "upload PATH...",
		Short: "Upload files, directories are uploaded recursively",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			folderId, err := resolveFolder(a.Files, folderRef)
			if err != nil {
				return err
			}
			paths := make([]string, 0, len(args))
			for _, arg := range args {
				path, err := cmd_env.ExpandHome(arg)
				if err != nil {
					return err
				}
				paths = append(paths, path)
			}

			uploader := upload.NewUploader(file_io.New(), a.Files, int64(a.Config.MaxUploadSize))
			uploader.OnProgress = func(path string, read int64, total int64) {
				if total <= 0 {
					return
				}
				progress := float64(read) / float64(total) * 100
				L.Footer(L.INFO, fmt.Sprintf("%s %s %.0f%%", L.ProgressBar(progress),
					L.TruncateString(filepath.Base(path), 32, L.TRUNC_CENTER), progress))
			}
			result, err := uploader.Start(ctx, paths, folderId)
			L.Footer(L.INFO, "")
			if err != nil {
				return err
			}
			for _, record := range result.Uploaded {
				L.Printf("Uploaded %s %s (%s)\n", record.Id, record.Name, record.Size)
			}
			for _, failure := range result.Failed {
				L.Warn(fmt.Sprintf("%s: %v", failure.Name, failure.Err))
			}
			L.Printf("%d uploaded, %d failed\n", len(result.Uploaded), len(result.Failed))
			if len(result.Uploaded) == 0 && len(result.Failed) > 0 {
				return fmt.Errorf("no file was uploaded")
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&folderRef, "folder", "f", "", "destination folder id or path, defaults to the root")
	return cmd
}

func lsCommand(env *cmd_env.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [FOLDER]",
		Short: "List a folder, defaults to the root",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			folderId, err := resolveFolder(a.Files, ref)
			if err != nil {
				return err
			}
			listing := a.Files.List(folderId)
			L.Printf("%s\n", folderPath(a.Files, folderId))
			for _, folder := range listing.Folders {
				L.Printf("  %-36s  %-10s  %s/\n", folder.Id, "", folder.Name)
			}
			for _, record := range listing.Files {
				L.Printf("  %-36s  %-10s  %s\n", record.Id, record.Size, record.Name)
			}
			if len(listing.Folders)+len(listing.Files) == 0 {
				L.Println("  (empty)")
			}
			return nil
		}),
	}
}

func getCommand(env *cmd_env.Env) *cobra.Command {
	var output, folderRef string
	cmd := &cobra.Command{
		Use:   "get FILE",
		Short: "Download a file by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			folderId, err := resolveFolder(a.Files, folderRef)
			if err != nil {
				return err
			}
			record, err := resolveFile(a.Files, args[0], folderId)
			if err != nil {
				return err
			}
			data, err := a.Files.Retrieve(ctx, record.Id)
			if err != nil {
				if errors.Is(err, files.ErrDataMissing) {
					return fmt.Errorf("%w, remove it with 'hourbox file rm %s' and upload it again", err, record.Id)
				}
				return err
			}
			if output == "" {
				output = localName(record)
			}
			output, err = cmd_env.ExpandHome(output)
			if err != nil {
				return err
			}
			_, err = file_io.WriteToFile(output, data, file_io.WRITE_OVERWRITE)
			if err != nil {
				return err
			}
			L.Printf("Saved %s to %s\n", record.Name, output)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path, defaults to the file name")
	cmd.Flags().StringVarP(&folderRef, "folder", "f", "", "folder to look up the name in")
	return cmd
}

func rmCommand(env *cmd_env.Env) *cobra.Command {
	var folderRef string
	cmd := &cobra.Command{
		Use:   "rm FILE...",
		Short: "Delete files by id or name",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			folderId, err := resolveFolder(a.Files, folderRef)
			if err != nil {
				return err
			}
			for _, ref := range args {
				record, err := resolveFile(a.Files, ref, folderId)
				if err != nil {
					return err
				}
				err = a.Files.DeleteFile(ctx, record.Id)
				if err != nil {
					return err
				}
				L.Printf("Deleted %s\n", record.Name)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&folderRef, "folder", "f", "", "folder to look up names in")
	return cmd
}

func mvCommand(env *cmd_env.Env) *cobra.Command {
	var folderRef string
	cmd := &cobra.Command{
		Use:   "mv FILE... TARGET",
		Short: "Move files into a folder, TARGET '/' is the root",
		Args:  cobra.MinimumNArgs(2),
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			sourceFolder, err := resolveFolder(a.Files, folderRef)
			if err != nil {
				return err
			}
			target, err := resolveFolder(a.Files, args[len(args)-1])
			if err != nil {
				return err
			}
			for _, ref := range args[:len(args)-1] {
				record, err := resolveFile(a.Files, ref, sourceFolder)
				if err != nil {
					return err
				}
				err = a.Files.MoveItem(ctx, record.Id, files.ITEM_KIND_FILE, target)
				if err != nil {
					return err
				}
				L.Printf("Moved %s to %s\n", record.Name, folderPath(a.Files, target))
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&folderRef, "folder", "f", "", "folder to look up names in")
	return cmd
}

// logWriter sends preview text through the logger so --log-level silent
// and test output capture apply to it.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	return L.Print(string(p))
}

func previewCommand(env *cmd_env.Env) *cobra.Command {
	var folderRef string
	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Show text files, write other supported files to the preview cache",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			folderId, err := resolveFolder(a.Files, folderRef)
			if err != nil {
				return err
			}
			record, err := resolveFile(a.Files, args[0], folderId)
			if err != nil {
				return err
			}
			dir, err := file_io.GetCacheDir("previews")
			if err != nil {
				return err
			}
			dispatcher := preview.NewDispatcher(a.Files, preview.DefaultRenderers(logWriter{}, dir, func(path string) {
				L.Printf("Preview written to %s\n", path)
			}))
			kind, err := dispatcher.Preview(ctx, *record)
			if err != nil {
				return err
			}
			L.Debug(fmt.Sprintf("rendered %s as %s", record.Name, kind))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&folderRef, "folder", "f", "", "folder to look up the name in")
	return cmd
}

func usageCommand(env *cmd_env.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show how many files are stored and their size",
		Args:  cobra.NoArgs,
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			usage, err := a.Files.Usage(ctx)
			L.Printf("Files   %d\nFolders %d\n", usage.Files, usage.Folders)
			if err != nil {
				return err
			}
			L.Printf("Stored  %d blobs, %s\n", usage.BlobCount, L.HumanReadableBytes(uint64(usage.BlobBytes), 1))
			return nil
		}),
	}
}

func archiveCommand(env *cmd_env.Env) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Write every stored file and folder into a .tar.gz",
		Args:  cobra.NoArgs,
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			if output == "" {
				output = fmt.Sprintf("hourbox-files-%s.tar.gz", time.Now().Format("20060102-150405"))
			}
			outputPath, err := cmd_env.ExpandHome(output)
			if err != nil {
				return err
			}
			tgz, err := archive.NewTarGzArchive(a.Files, outputPath)
			if err != nil {
				return err
			}
			tgz.OnProgress = func(p archive.Progress, name string) {
				progress := float64(p.Done) * 100 / float64(max(p.Total, 1))
				L.Footer(L.INFO, fmt.Sprintf("Archiving %s (%d/%d) %s", L.ProgressBar(progress), p.Done, p.Total,
					L.TruncateString(name, 32, L.TRUNC_CENTER)))
			}
			summary, err := tgz.Start(ctx)
			L.Footer(L.INFO, "")
			if err != nil {
				return err
			}
			L.Printf("Archived %d files in %d folders (%s -> %s) to %s\n",
				summary.Written, summary.Folders,
				L.HumanReadableBytes(summary.SizeInBytes, 1), L.HumanReadableBytes(summary.ArchivedSize, 1),
				tgz.OutputPath)
			if len(summary.Skipped) > 0 {
				L.Warn(fmt.Sprintf("%d files have no content and were skipped", len(summary.Skipped)))
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "archive path, defaults to hourbox-files-<time>.tar.gz")
	return cmd
}
