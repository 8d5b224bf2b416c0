package program

import (
	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/workspace"
)

// ASTSuffix is appended to a PHP file path to name its syntax tree artifact.
const ASTSuffix = ".ast.json"

// WriteOptions controls which artifacts Write produces.
type WriteOptions struct {
	ASTJSON bool
}

// SerialiseAST encodes stmts as indented JSON with a trailing newline.
func SerialiseAST(stmts []ast.Stmt) ([]byte, error) {
	data, err := ast.MarshalIndent(stmts)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Write persists the program's source and, when enabled, its syntax tree.
func Write(ws workspace.Workspace, p Program, opts WriteOptions) ([]workspace.Result, error) {
	var results []workspace.Result

	result, err := ws.Write(p.Path, []byte(p.Code))
	if err != nil {
		return results, err
	}
	results = append(results, result)

	if !opts.ASTJSON {
		return results, nil
	}

	data, err := SerialiseAST(p.Stmts)
	if err != nil {
		return results, errors.NewWorkspaceWrite(p.Path+ASTSuffix, err)
	}
	result, err = ws.Write(p.Path+ASTSuffix, data)
	if err != nil {
		return results, err
	}
	return append(results, result), nil
}

// WriteAll builds and writes every entry of the channel, in order.
func WriteAll(ws workspace.Workspace, channel *Channel, opts WriteOptions) ([]workspace.Result, error) {
	var results []workspace.Result
	for _, entry := range channel.Entries() {
		written, err := Write(ws, Build(entry), opts)
		results = append(results, written...)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
