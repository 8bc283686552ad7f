// Package sdk wires configuration, chain access and the channel manager
// proxy into one entry point.
//
//	cfg, err := config.Load("config.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	core, err := sdk.NewSDK(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer core.Close()
//
//	channels := core.Channels()
//	lg, err := channels.AwaitChannelCreated(ctx, sender, receiver,
//		blockchain.Block(0), blockchain.Pending, core.WaitOpts())
//
// The package also installs a default global zap logger in init();
// applications with their own logging call zap.ReplaceGlobals to override it.
package sdk
