package views

const stylesheet = `
body{font-family:system-ui,-apple-system,"Segoe UI",sans-serif;margin:0;color:#1f2933;background:#f7f9fb}
header{display:flex;gap:2rem;align-items:center;padding:1rem 2rem;background:#12355b;color:#fff}
header a{color:#fff;text-decoration:none}
header nav a{margin-right:1rem;opacity:.85}
.brand{font-weight:700;font-size:1.2rem}
main{padding:1.5rem 2rem;max-width:1200px}
table{border-collapse:collapse;width:100%;background:#fff;font-size:.9rem}
th,td{border:1px solid #d9e2ec;padding:.4rem .6rem;text-align:left}
th{background:#e4ecf4}
.empty{color:#627d98;font-style:italic}
.kind{display:inline-block;min-width:5rem;font-size:.75rem;text-transform:uppercase;color:#486581}
.downloads a{margin-left:.5rem;font-size:.85rem}
.rules time{margin-left:.5rem;color:#627d98;font-size:.85rem}
.charts{display:grid;grid-template-columns:repeat(auto-fit,minmax(420px,1fr));gap:1rem;margin:1.5rem 0}
.chart{margin:0;padding:.75rem;background:#fff;border:1px solid #d9e2ec;break-inside:avoid}
.chart figcaption{font-weight:600;margin-bottom:.5rem}
.chart svg{width:100%;height:auto;font-size:11px;fill:#1f2933}
footer{padding:1rem 2rem;color:#829ab1;font-size:.8rem}
@page{size:A4 landscape;margin:12mm}
`
