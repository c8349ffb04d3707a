// Package plugins discovers content-provider plugins on disk and supervises
// their serving processes.
//
// A plugin is a directory under the supervisor's root containing a
// manifest.json. Discovery loads manifests and registers plugins by id;
// malformed manifests are logged and skipped, never aborting the scan.
//
// Starting a webview plugin allocates an ephemeral port, spawns
// `<interpreter> <entry_script> <port>` with the plugin directory as working
// directory, and maps the id to http://127.0.0.1:<port>. Start is idempotent
// while the process runs; Stop kills and reaps it. Closing the supervisor is
// the only mechanism preventing orphaned children — there is no reaper
// thread.
package plugins
