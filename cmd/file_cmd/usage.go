package file_cmd

const fileUsageStr string = `
DESCRIPTION
Stores files in the local database. Files are referred to by id or, when the
name is unique in the folder given with --folder, by name. Folders are
referred to by id or by a path of names such as /notes/2024.

Uploads larger than max_upload_size are skipped and reported, the rest of the
batch is still stored.

EXAMPLES
1. hourbox file upload ~/notes/*.pdf --folder /notes
2. hourbox file ls /notes
3. hourbox file get report.pdf --folder /notes -o ~/report.pdf
4. hourbox file preview todo.txt
5. hourbox file mv report.pdf /archive --folder /notes
6. hourbox file archive -o ~/backup.tar.gz
`

const folderUsageStr string = `
DESCRIPTION
Folders form a tree under the root. Deleting a folder deletes every folder
and file below it. A folder cannot be moved into itself or one of its
subfolders.

EXAMPLES
1. hourbox folder mk 2024 --parent /notes
2. hourbox folder rename /notes/2024 2024-archive
3. hourbox folder mv /notes/2024-archive /
4. hourbox folder rm /notes --yes
`
