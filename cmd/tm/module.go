package main

import (
	"github.com/Zitronenjoghurt/simple-turing-machine/catalog"
	"github.com/Zitronenjoghurt/simple-turing-machine/debugs"
	"github.com/Zitronenjoghurt/simple-turing-machine/store"
	"github.com/Zitronenjoghurt/simple-turing-machine/tapes"
	"github.com/Zitronenjoghurt/simple-turing-machine/tmconfigs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs tmconfigs.Module
	Catalog catalog.Module
	Store   store.Module
	Tapes   tapes.Module
	Debugs  debugs.Module
}
