// Package hugo turns a resolved site configuration into a Hugo project and,
// when the hugo binary is available, renders it.
//
// A build runs a fixed sequence of stages (see StageName) inside a staging
// directory next to the output directory:
//
//	prepare_output   fresh staging dir, content stubs
//	i18n             message catalog, i18n/<lang>.yaml
//	generate_config  hugo.yaml (languages, menus, params, module mounts)
//	components       pre-rendered feature and comment partials per locale
//	layouts          theme hook overrides and the features shortcode
//	run_hugo         hugo --source <stage>
//	verify_links     broken link policies
//
// The staging directory replaces the output directory only when no stage
// failed. Every stage is timed, reported to a metrics.Recorder and, when a
// history store is attached, written to the build event log.
package hugo
