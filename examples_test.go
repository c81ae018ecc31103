package envnode_test

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cep21/envnode"
)

func exampleDir(content string) string {
	dir, err := os.MkdirTemp("", "envnode")
	if err != nil {
		panic("never happens")
	}
	if err := os.WriteFile(filepath.Join(dir, envnode.FileName), []byte(content), 0o600); err != nil {
		panic("never happens")
	}
	return dir
}

func ExampleNode_VariableNames() {
	dir := exampleDir("# database\nDB_HOST=localhost\nDB_PASS='s3cret'\n")
	defer os.RemoveAll(dir)
	n := envnode.New(dir)
	fmt.Println(n.VariableNames(context.Background()))
	// Output: [DB_HOST DB_PASS]
}

func ExampleNode_Value() {
	ctx := context.Background()
	dir := exampleDir("GREETING=\"hello world\"\n")
	defer os.RemoveAll(dir)
	n := envnode.New(dir)
	n.Env = &envnode.Mem{}
	fmt.Println(n.Value(ctx, "GREETING"))
	fmt.Printf("%q\n", n.Value(ctx, "MISSING"))
	fmt.Println(n.Value(ctx, envnode.NoVariablesFound))
	// Output: hello world
	// ""
	// No .env file found or no variables available
}

func ExampleNode_Load() {
	ctx := context.Background()
	dir := exampleDir("A=1\nA=2\n")
	defer os.RemoveAll(dir)
	n := envnode.New(dir)
	n.Env = &envnode.Mem{}
	fmt.Println("before", n.Value(ctx, "A"))
	if err := n.Load(ctx); err != nil {
		panic("never happens")
	}
	fmt.Println("after", n.Value(ctx, "A"))
	// Output: before 1
	// after 2
}

func ExampleRegistry() {
	ctx := context.Background()
	dir := exampleDir("API_KEY=abc\n")
	defer os.RemoveAll(dir)
	n := envnode.New(dir)
	n.Env = &envnode.Mem{}

	r := envnode.Registry{}
	if err := envnode.Register(&r, n); err != nil {
		panic("never happens")
	}
	d, _ := r.Lookup(envnode.NodeName)
	in := d.Inputs(ctx)[0]
	out, err := d.Invoke(ctx, map[string]string{in.Name: in.Default})
	if err != nil {
		panic("never happens")
	}
	fmt.Println(d.DisplayName, in.Options, out)
	// Output: Environment Variable Reader [API_KEY] [abc]
}

func ExampleNode_Var() {
	dir := exampleDir("TOKEN=abc\n")
	defer os.RemoveAll(dir)
	n := envnode.New(dir)
	expvar.Publish("envnode", n.Var())

	var dat struct {
		Loaded    bool     `json:"loaded"`
		Variables []string `json:"variables"`
	}
	if err := json.Unmarshal([]byte(expvar.Get("envnode").String()), &dat); err != nil {
		panic("never happens")
	}
	fmt.Println(dat.Loaded, dat.Variables)
	// Output: false [TOKEN]
}
