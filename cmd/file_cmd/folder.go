package file_cmd

import (
	"context"
	"fmt"
	"hourbox/app"
	"hourbox/cmd/cmd_env"
	"hourbox/files"
	L "hourbox/logger"

	"github.com/spf13/cobra"
)

func FolderCommand(env *cmd_env.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Create, rename, move and delete folders",
		Long:  folderUsageStr,
	}
	cmd.AddCommand(mkCommand(env), renameCommand(env), folderMvCommand(env), folderRmCommand(env))
	return cmd
}

func mkCommand(env *cmd_env.Env) *cobra.Command {
	var parentRef string
	cmd := &cobra.Command{
		Use:   "mk NAME",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			parentId, err := resolveFolder(a.Files, parentRef)
			if err != nil {
				return err
			}
			folder, err := a.Files.CreateFolder(ctx, args[0], parentId)
			if err != nil {
				return err
			}
			L.Printf("Created %s %s\n", folder.Id, folderPath(a.Files, &folder.Id))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&parentRef, "parent", "p", "", "parent folder id or path, defaults to the root")
	return cmd
}

func renameCommand(env *cmd_env.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "rename FOLDER NAME",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			folderId, err := resolveFolder(a.Files, args[0])
			if err != nil {
				return err
			}
			if folderId == nil {
				return fmt.Errorf("the root folder cannot be renamed")
			}
			err = a.Files.RenameFolder(ctx, *folderId, args[1])
			if err != nil {
				return err
			}
			L.Printf("Renamed to %s\n", folderPath(a.Files, folderId))
			return nil
		}),
	}
}

func folderMvCommand(env *cmd_env.Env) *cobra.Command {
	return &cobra.Command{
		Use:   "mv FOLDER TARGET",
		Short: "Move a folder into another one, TARGET '/' is the root",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			folderId, err := resolveFolder(a.Files, args[0])
			if err != nil {
				return err
			}
			if folderId == nil {
				return fmt.Errorf("the root folder cannot be moved")
			}
			target, err := resolveFolder(a.Files, args[1])
			if err != nil {
				return err
			}
			err = a.Files.MoveItem(ctx, *folderId, files.ITEM_KIND_FOLDER, target)
			if err != nil {
				return err
			}
			L.Printf("Moved to %s\n", folderPath(a.Files, folderId))
			return nil
		}),
	}
}

func folderRmCommand(env *cmd_env.Env) *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   "rm FOLDER",
		Short: "Delete a folder with everything inside it",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(env, func(ctx context.Context, a *app.App, args []string) error {
			folderId, err := resolveFolder(a.Files, args[0])
			if err != nil {
				return err
			}
			if folderId == nil {
				return fmt.Errorf("the root folder cannot be deleted")
			}
			if !assumeYes {
				return fmt.Errorf("this deletes %s and everything inside it, pass --yes to confirm", folderPath(a.Files, folderId))
			}
			summary, err := a.Files.DeleteFolder(ctx, *folderId)
			if err != nil {
				return err
			}
			L.Printf("Deleted %s: %d folders, %d files\n", summary.RemovedFolder.Name, summary.Folders, summary.Files)
			if summary.BlobFailures > 0 {
				L.Warn(fmt.Sprintf("%d file contents could not be removed from storage", summary.BlobFailures))
			}
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
