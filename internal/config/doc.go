// Package config provides configuration loading for vela tools.
//
// The configuration is stored in vela.yaml at the project root. Every
// field has a default, so the file is optional; VELA_* environment
// variables override whatever the file says.
//
// # Configuration File Structure
//
//	runtime:
//	  frame_interval: 16ms
//	  strict_hydration: false
//	  transition_duration: 400ms
//	log:
//	  level: info
//	inspector:
//	  addr: 127.0.0.1:7070
//	metrics:
//	  namespace: vela
//	export:
//	  target: s3://assets/vela/keyframes.css
//	  region: eu-west-1
//
// # Environment
//
//	VELA_FRAME_INTERVAL        runtime.frame_interval
//	VELA_STRICT_HYDRATION      runtime.strict_hydration
//	VELA_TRANSITION_DURATION   runtime.transition_duration
//	VELA_LOG_LEVEL             log.level
//	VELA_INSPECTOR_ADDR        inspector.addr
//	VELA_METRICS_NAMESPACE     metrics.namespace
//	VELA_EXPORT_TARGET         export.target
//	VELA_EXPORT_REGION         export.region
//
// # Usage
//
//	cfg, err := config.LoadOptional(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Inspector:", cfg.Inspector.Addr)
package config
