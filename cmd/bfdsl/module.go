package main

import (
	"github.com/reusee/bfdsl/bfscript"
	"github.com/reusee/bfdsl/bfvm"
	"github.com/reusee/bfdsl/debugs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	VM      bfvm.Module
	Scripts bfscript.Module
	Debugs  debugs.Module
}
