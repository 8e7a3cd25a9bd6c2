// shuriken-dump prints the contents of a DEX or APK file: its string table,
// class definitions, disassembly or analysis results.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Shuriken-Group/shuriken-go/pkg/shuriken"
)

func main() {
	var (
		showStrings = flag.Bool("strings", false, "dump the string table")
		showClasses = flag.Bool("classes", false, "dump class definitions")
		disasm      = flag.String("disasm", "", "disassemble one method by its dalvik name, or 'all'")
		analyze     = flag.String("analyze", "", "print the analysis of one class")
		xrefs       = flag.Bool("xrefs", false, "compute cross-references during analysis")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: shuriken-dump [flags] file.dex|file.apk\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	var err error
	if strings.HasSuffix(strings.ToLower(path), ".apk") {
		err = dumpApk(path, *showStrings, *showClasses, *disasm, *analyze, *xrefs)
	} else {
		err = dumpDex(path, *showStrings, *showClasses, *disasm, *analyze, *xrefs)
	}
	if err != nil {
		if errors.Is(err, shuriken.ErrNotBuilt) {
			log.Fatal("this binary was built without ShurikenLib; rebuild with cgo and the library installed")
		}
		log.Fatal(err)
	}
}

func dumpDex(path string, showStrings, showClasses bool, disasm, analyze string, xrefs bool) error {
	d, err := shuriken.OpenDex(path)
	if err != nil {
		return err
	}
	defer d.Close()

	if showStrings {
		all, err := d.Strings()
		if err != nil {
			return err
		}
		for i, s := range all {
			fmt.Printf("string[%d] = %q\n", i, s)
		}
	}

	if showClasses {
		n, err := d.ClassCount()
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			cls, err := d.ClassAt(i)
			if err != nil {
				return err
			}
			printClass(cls)
		}
	}

	if disasm != "" {
		if err := d.Disassemble(); err != nil {
			return err
		}
		if disasm == "all" {
			return dumpAllMethods(d)
		}
		dm, err := d.DisassembledMethod(disasm)
		if err != nil {
			return err
		}
		fmt.Println(dm.Text)
	}

	if analyze != "" {
		if err := d.Analyze(xrefs); err != nil {
			return err
		}
		ca, err := d.AnalyzedClass(analyze)
		if err != nil {
			return err
		}
		printClassAnalysis(ca)
	}

	return nil
}

func dumpAllMethods(d *shuriken.Dex) error {
	n, err := d.ClassCount()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cls, err := d.ClassAt(i)
		if err != nil {
			return err
		}
		for _, m := range append(cls.DirectMethods, cls.VirtualMethods...) {
			dm, err := d.DisassembledMethod(m.DalvikName)
			if err != nil {
				// Abstract and native methods have no code item.
				continue
			}
			fmt.Println(dm.Text)
		}
	}
	return nil
}

func dumpApk(path string, showStrings, showClasses bool, disasm, analyze string, xrefs bool) error {
	a, err := shuriken.OpenApk(path, xrefs)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.DexFileCount()
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		name, err := a.DexFileAt(i)
		if err != nil {
			return err
		}
		fmt.Printf("== %s ==\n", name)

		if showStrings {
			count, err := a.StringCount(name)
			if err != nil {
				return err
			}
			for j := 0; j < count; j++ {
				s, err := a.StringAt(name, j)
				if err != nil {
					return err
				}
				fmt.Printf("string[%d] = %q\n", j, s)
			}
		}

		if showClasses {
			count, err := a.ClassCount(name)
			if err != nil {
				return err
			}
			for j := 0; j < count; j++ {
				cls, err := a.ClassAt(name, j)
				if err != nil {
					return err
				}
				printClass(cls)
			}
		}
	}

	if disasm != "" && disasm != "all" {
		dm, err := a.DisassembledMethod(disasm)
		if err != nil {
			return err
		}
		fmt.Println(dm.Text)
	}

	if analyze != "" {
		ca, err := a.AnalyzedClass(analyze)
		if err != nil {
			return err
		}
		printClassAnalysis(ca)
	}

	return nil
}

func printClass(cls *shuriken.Class) {
	fmt.Printf("class %s extends %s (%s)\n",
		cls.Name, cls.SuperClass, shuriken.AccessFlagsString(cls.AccessFlags))
	for _, f := range append(cls.StaticFields, cls.InstanceFields...) {
		fmt.Printf("  field %s %s (%s)\n", f.Name, f.TypeDescriptor, shuriken.AccessFlagsString(f.AccessFlags))
	}
	for _, m := range append(cls.DirectMethods, cls.VirtualMethods...) {
		fmt.Printf("  method %s (%s)\n", m.DalvikName, shuriken.AccessFlagsString(m.AccessFlags))
	}
}

func printClassAnalysis(ca *shuriken.ClassAnalysis) {
	fmt.Printf("analysis of %s extends %s external=%v\n", ca.Name, ca.Extends, ca.External)
	for _, ma := range ca.Methods {
		fmt.Printf("  method %s blocks=%d callees=%d callers=%d\n",
			ma.FullName, len(ma.BasicBlocks), len(ma.Callees), len(ma.Callers))
	}
	for _, fa := range ca.Fields {
		fmt.Printf("  field %s reads=%d writes=%d\n", fa.Name, len(fa.Reads), len(fa.Writes))
	}
	for _, x := range ca.XrefTo {
		fmt.Printf("  xref-to %s (%d sites)\n", x.Class, len(x.Methods))
	}
	for _, x := range ca.XrefFrom {
		fmt.Printf("  xref-from %s (%d sites)\n", x.Class, len(x.Methods))
	}
}
