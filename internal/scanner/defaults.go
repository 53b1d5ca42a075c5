package scanner

// DefaultExcludeDirs 是默认跳过的目录名（构建产物、依赖、虚拟环境等）。
// 含 "/" 的条目按相对路径 glob 匹配。
var DefaultExcludeDirs = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	".next",
	"coverage",
	"venv",
	".venv",
	".vercel",
	"__pycache__",
	".pytest_cache",
	"testsprite_tests/tmp",
	".desloppify",
	".claude",
	".agents",
	".opencodeskills",
	".sisyphus",
	".cache",
	"target",
	"out",
}

// DefaultSourceExtensions 是参与统计的源码与文档后缀。
var DefaultSourceExtensions = []string{
	".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs",
	".py", ".sh",
	".css", ".scss", ".sass", ".less", ".styl",
	".md", ".json", ".yml", ".yaml", ".toml", ".ini", ".cfg",
	".html", ".htm", ".xml", ".svg",
	".vue", ".svelte", ".astro",
	".rs", ".go", ".java", ".cpp", ".c", ".h", ".hpp",
	".php", ".rb", ".perl", ".pl", ".lua", ".r", ".sql",
}

// DefaultSkipExtensions 是二进制/媒体后缀，优先级高于 DefaultSourceExtensions。
var DefaultSkipExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".avif", ".ico", ".svg",
	".pdf", ".zip", ".tar", ".gz", ".tgz", ".rar", ".7z",
	".exe", ".dll", ".so", ".dylib", ".bin", ".obj", ".lib",
	".class", ".jar", ".war", ".ear", ".pyc", ".pyo",
	".mp3", ".mp4", ".avi", ".mov", ".wmv", ".flv", ".webm",
	".woff", ".woff2", ".ttf", ".eot", ".otf",
	".glb", ".gltf", ".3d", ".3ds", ".mtl",
}

// 默认 TODO/FIXME 匹配规则，均不区分大小写。
// TODO 同时接受 "To-Do" 写法。
const (
	DefaultTodoPattern  = `(?i)to-?do`
	DefaultFixmePattern = `(?i)fixme`
)
